package sim

import "math"

// Gameplay tuning. World units are abstract; the default level is 1280x720.
const (
	playerRadius    = 14.0
	playerMaxHealth = 100.0
	playerSpeed     = 220.0 // units per second
	healAmount      = 35.0
	healDuration    = 1.2 // seconds channeling a medkit
	hitFlashTime    = 0.25

	enemyRadius       = 14.0
	enemyMaxHealth    = 100.0
	enemySpeed        = 120.0
	enemyViewDist     = 420.0
	enemyFOV          = 100.0 * math.Pi / 180.0 // total arc
	enemyFireCooldown = 0.9
	enemyDamage       = 8.0
	enemySpread       = 0.06
	enemyTurnRate     = 4.0 // radians per second
	searchLookRate    = 2.2 // radians per second while searching in place

	searchDuration      = 3.0
	soundSearchDuration = 1.5
	suppressDuration    = 1.2
	arriveDist          = 10.0
	doorOpenProbeDist   = 40.0 // how far ahead a blocked enemy probes for a door
	doorCampDist        = 70.0 // player this close on the far side blocks auto-open

	// Advanced archetype melee sub-machine.
	advMeleeRange   = 52.0
	advMeleeArc     = 70.0 * math.Pi / 180.0
	advWindupTime   = 0.35
	advSwingTime    = 0.15
	advRecoverTime  = 0.5
	advMeleeDamage  = 60.0
	shieldBlockStun = 0.8 // stun applied to the attacker on a blocked swing

	// Advanced archetype rifle sub-machine.
	rifleMagSize    = 30
	rifleReloadTime = 2.2
	rifleBurstLen   = 3
	rifleShotDelay  = 0.09
	rifleBurstPause = 0.55
	rifleDamage     = 7.0
	rifleSpread     = 0.045

	// Status effects.
	bleedMaxStacks   = 5
	bleedDPSPerStack = 4.0
	bleedDuration    = 3.0 // refreshed, never extended, per new stack
	burnDPS          = 10.0
	burnDuration     = 2.0

	soundExpandSpeed = 900.0 // units per second

	// Door dynamics.
	doorVelDecay      = 3.0 // exponential decay per second when unheld
	doorDriveRate     = 2.6 // radians per second toward a target angle
	doorSwingSoundVel = 2.4 // angular speed that emits a sound
	doorSoundCooldown = 0.5
	doorSoundRadius   = 420.0

	// Flashbang blind window by exposure angle.
	flashBlindMax = 2.8
	flashBlindMin = 0.4

	// Shield mitigation arcs.
	shieldFrontHalfArc = 75.0 * math.Pi / 180.0
	shieldRearHalfArc  = 60.0 * math.Pi / 180.0
	rearPassFraction   = 0.2

	homingReleaseAngle = 0.05 // heading error below which a lock stops steering

	impactTTL    = 0.2
	maxDTDefault = 0.1
)
