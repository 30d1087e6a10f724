// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters) and the robots engine.
//
// Services hold no state beyond their configuration and are safe for
// concurrent use.
package services
