// Package orrery holds the fixed celestial catalogue and its circular-orbit
// kinematics.
//
// Every body moves on a fixed-radius circle at a constant angular speed:
//
//   - [Body]: a planet orbiting the sun
//   - [Moon]: a satellite orbiting a planet's current position
//   - [System]: the catalogue as a [dynamo.System] over the body angles
//   - [Star]: decorative background point
//
// Positions are a pure function of (center, radius, angle), see [Position].
// Nothing here models gravity.
package orrery
