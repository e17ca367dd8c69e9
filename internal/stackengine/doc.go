// Package stackengine synthesises a stacking script for the staged
// sequence of one group, spawns the configured external stacking engine to
// execute it, and moves the resulting intermediate file onto the final
// library path. It holds no opinion about which frames a group contains;
// it only knows how to turn a staging directory and a set of parameters
// into a command invocation.
package stackengine
