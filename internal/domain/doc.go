// Package domain contains the core game entities and rules for rockpapershock.
//
// This package is the innermost layer. It has no dependencies on
// infrastructure concerns (HTTP, console, logging) and contains only pure
// game logic.
//
// # Entities
//
//   - [Choice]: one of rock, paper or scissors
//   - [Outcome]: the result of comparing two choices
//   - [DeviceCommand]: a remote instruction for the wearable device
//   - [Credentials]: API token and target device id
//   - [Stats]: per-session tally, kept in memory only
package domain
