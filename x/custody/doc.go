/*
Package custody implements a dual-party custody engine.

Two parties, a customer and a counterparty, share a pool of coins held in
the wallet of the engine address. Each party may spend alone, limited by a
rolling rate limit over the last K windows of blocks, or both parties may
co-sign a spend which is not limited but consumes a nonce.

Every engine call is applied atomically. State changes of a failed call,
including a failed coin transfer, are discarded.
*/
package custody
