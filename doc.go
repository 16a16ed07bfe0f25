/*
Package custody defines the common interfaces used to weave together the
custody engine, its storage and its extensions, as well as implementations of
some of the simpler components.

The engine guards a pool of value held on behalf of two fixed parties, a
customer and a counterparty. Every spend is either authorized by one of the
parties alone, in which case it is subject to a rolling spend limit, or by
both parties together, in which case it is protected from replay by a
monotonic nonce. The business logic lives in the x/custody extension.

We pass context through context.Context between the command line, the engine
and the extensions. To do so, this package defines some common keys to store
info, such as block height and logger. There should exist two functions for
every XYZ of type T that we want to support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level modules
overwriting the value (eg. height).
*/
package custody
