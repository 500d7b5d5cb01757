// Package storetest holds the behavioural contract every store.TaskStore
// implementation must satisfy. Backend packages call RunTaskStoreContract
// from their own tests.
package storetest
