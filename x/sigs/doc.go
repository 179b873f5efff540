/*
Package sigs provides basic authentication
middleware to verify the signatures on the transaction,
and maintain nonces for replay protection.

Every signature is bound to the chain id and the next nonce of the signer,
so a signed transaction can be delivered only once and only on the chain
it was created for.
*/
package sigs
