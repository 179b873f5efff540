/*
Package gate implements a multi signature authorization gate.

A committee of signers and a threshold are configured at genesis. Any
signer can submit a proposal carrying a single action. Signers confirm the
proposal and the confirmation that reaches the threshold executes the
action, exactly once, authenticated as the committee. Proposals are never
deleted and never expire.

To protect a ledger reserve, configure the committee address as the ledger
owner:

	cond:gate/committee/6D61696E
*/
package gate
