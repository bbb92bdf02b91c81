// Package storage provides a ready-made host environment exposing
// contract storage to guests: the syscall descriptors plus an in-memory
// Store suitable for tests, tooling, and embedders without a real
// storage backend.
//
// The dispatch core itself never prescribes which syscalls exist; this
// package is one concrete environment built on it.
//
//	store := storage.NewMemStore()
//	table, err := env.NewTable(storage.Functions(), env.WithUnstable())
//
// Handlers reach their collaborators through the execution context: the
// Ext passed to dispatch must also implement [Ext] so handlers can find
// the Store.
package storage
