// Package engine contains the simulation core for Campaign Manager 2026.
//
// ARCHITECTURAL RULE: the engine is a strict sequential state machine.
// No component mutates shared state; old GameState in, new GameState
// out. Randomness is the only nondeterminism and every stream is
// seedable, so one integer seed reproduces a whole game.
package engine
