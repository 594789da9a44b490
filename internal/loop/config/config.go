// Package config centralizes all tunable scene parameters.
package config

import (
	"math"
	"time"
)

// Starfield
const (
	StarCount  = 10000
	StarExtent = 1000.0 // Half-size of the cube the stars fill
	StarColor  = 0x888888
	StarSize   = 0.3
)

// Shooting stars
const (
	ShootingStarCount = 5
	ShootingStarSpawn = 500.0  // Half-size of the cube stars (re)spawn in
	ShootingStarBound = 1500.0 // Distance from origin that triggers a reset
	ShootingStarSpeed = 1.0    // Velocity components are drawn from [-speed, speed]
	ShootingStarColor = 0xffffff
	ShootingStarSize  = 0.5
	ShootingStarTrail = 3.0 // Trail length in frames of velocity
)

// Lighting
const (
	AmbientLightColor  = 0xffffff
	AmbientLightAmount = 0.6
)

// Paintings
const (
	RingRadius        = 25.0
	PaintingWidth     = 10.0
	PaintingHeight    = 15.0
	PaintingDepth     = 1.0
	FrameWidth        = 10.2
	FrameHeight       = 15.2
	FrameOffsetZ      = -0.1
	FrameColor        = 0x000000
	WoodColor         = 0x8B4513
	SpotLightColor    = 0xffffff
	SpotLightPower    = 8.0
	SpotLightDistance = 40.0
	SpotLightAngle    = math.Pi / 6
	SpotLightHeight   = 10.0
	TextureMaxWidth   = 160 // Decoded textures are downscaled to at most this size
	TextureMaxHeight  = 240
)

// Camera
const (
	CameraFOV  = 75.0 // Vertical field of view in degrees
	CameraNear = 0.1
	CameraFar  = 1000.0
	CameraZ    = 5.0 // Initial distance from the target along +Z
)

// Orbit controls
const (
	DampingFactor   = 0.05
	MinDistance     = 2.0
	MaxDistance     = 50.0
	AutoRotateSpeed = 0.5
	RotateSpeed     = -1.0
	ZoomSpeed       = 1.0
	KeyRotatePixels = 6.0 // Drag distance one held arrow key is worth per frame
)

// Hidden message
const (
	MessagePolarThreshold = 0.5 // Camera polar angle, in radians from overhead, below which the message shows
	MessageHideAfter      = 10 * time.Second
)

// Terminal rendering
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
	MaxTermWidth    = 240
	MaxTermHeight   = 80
)
