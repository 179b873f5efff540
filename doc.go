/*
Package treasury defines interfaces used throughout the ledger, such as:
storage, transactions, handlers, identities and events.

A treasury application is a set of extensions (x/...) that process messages
against a key-value store. Every extension registers handlers on a router,
decorators wrap those handlers with authentication, savepoints and logging,
and the app package drives the whole stack one transaction at a time.
*/
package treasury
