package game

// Action is a discrete input consumed by Engine.Update.
type Action int

const (
	ActionNone Action = iota
	RotateLeft
	RotateRight
	RotateStop
	ThrustOn
	ThrustStop
	ShootLaser
	EnableLaser
	GameLoop
)

var actionNames = map[Action]string{
	ActionNone:  "none",
	RotateLeft:  "rotateLeft",
	RotateRight: "rotateRight",
	RotateStop:  "rotateStop",
	ThrustOn:    "thrustOn",
	ThrustStop:  "thrustStop",
	ShootLaser:  "shootLaser",
	EnableLaser: "enableLaser",
	GameLoop:    "gameLoop",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}
