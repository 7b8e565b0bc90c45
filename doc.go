// Package journal is the Composition Root of a local-first journaling engine.
//
// It connects the journal domain (entries, folders, images) with a durable
// key-value store using the Hexagonal Architecture pattern. Everything lives
// on the local machine: there is no server, no sync and a single writer.
//
// Layers:
//
//   - pkg/core: domain types and the Store port.
//   - pkg/adapters: fs (one JSON file per slot, atomic writes), sqlite and
//     memory implementations of the port.
//   - pkg/storage: CRUD over the two slots. Storage failures never reach the
//     caller; reads degrade to empty collections and failed writes leave the
//     previous data in place.
//   - pkg/controller: the in-memory session state (selection, working draft,
//     filters) with a debounced autosave.
//
// Usage:
//
//	j, err := journal.New("./notes", journal.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer j.Close(ctx)
//
//	j.Load(ctx)
//	j.Controller.NewEntry(ctx)
//	j.Controller.SetContent("# Today")
package journal
