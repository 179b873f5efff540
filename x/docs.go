/*
Package x contains the extensions of the treasury application.

Extensions implement a Handler, Decorator or Initializer and can be
combined together by the app package. The authentication helpers in
this package are shared by all of them, so that an extension never
hard codes where the caller identity comes from.

Sub-packages:

  cash     base currency wallets
  ledger   fungible ledger with allowances and a reserve
  exchange fixed rate purchase of ledger units
  gate     multi signature authorization of actions
  sigs     signature verification and nonces
  utils    decorators shared by all extensions
*/
package x
