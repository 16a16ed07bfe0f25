/*
Package cash keeps coin balances for addresses.

A custody engine holds its pool in a wallet stored under the engine address.
Spends move coins from that wallet to the destination and deposits credit it.
*/
package cash
