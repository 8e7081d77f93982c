// Package store defines the persistence contracts of the engine: the
// three-key blob storage every durable collection is mirrored into, and
// the interfaces of the library and progress stores that own them.
package store
