/*
Package cash keeps the balances of the base currency.

The base currency is what buyers pay the reserve exchange with and what the
ledger owner receives when the reserve is withdrawn. There is no logic in
the currency, except that the balance of a wallet may not go below zero.
*/
package cash
