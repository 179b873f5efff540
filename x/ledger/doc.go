/*
Package ledger implements a fungible asset ledger with delegated transfer
rights.

The whole supply is issued once at genesis and credited to the holding
account of the ledger. Holders move units with transfers, grant spenders
an allowance and spenders move units on behalf of the owner. The ledger
also keeps a reserve of base currency paid by buyers through the exchange,
which only the owner of the ledger can withdraw.

The sum of all balances is always equal to the total supply.
*/
package ledger
