// Package layout positions a process graph as a swimlane diagram.
//
// # Overview
//
// The engine is a straight five-stage pipeline that turns an ordered
// node/edge/actor structure into pixel coordinates:
//
//  1. Convert: every process node becomes one styled visual element.
//  2. Break cycles: edges pointing backward in declaration order are
//     rewritten as forward edges through synthetic link throw/catch
//     pairs, so the graph reads left to right.
//  3. Rank: breadth-first leveling assigns each element a column.
//  4. Lanes: one horizontal band per declared actor, plus a shared
//     band for elements without an actor.
//  5. Position and size: elements are placed column by column,
//     stacked vertically inside each (rank, lane) cell, and the
//     canvas grows to fit.
//
// # Usage
//
//	p, _ := process.ImportJSON("order.json")
//	d, res, err := layout.Layout(p, layout.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	log.Info("laid out", "ranks", res.Ranks, "backward", res.BackwardEdges)
//
// The computation is pure and synchronous: it performs no I/O, takes
// all tuning as explicit [Config] values, and creates its counters
// fresh on every call, so independent invocations may run concurrently.
package layout
