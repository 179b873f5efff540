/*
Package exchange sells ledger units for base currency at the fixed rate
stored in the ledger state.

Units are never minted. A purchase moves already issued units out of the
ledger holding account and the payment into the ledger reserve.
*/
package exchange
