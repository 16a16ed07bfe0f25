/*
Package secp256k1 implements recoverable signatures in the form produced by
Ethereum wallets.

A signature is 65 bytes, R || S || V, where V is the recovery id either as
0/1 or offset by 27. Only the lower half of S is accepted so that every
signed digest has exactly one valid signature per key.
*/
package secp256k1
