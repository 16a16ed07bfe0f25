/*
Package coin defines the value type moved by custody engines.

A Coin is a fixed point number with nine fractional digits and a currency
ticker. The integer form used for hashing is the amount in base units, that
is whole * 10^9 + fractional.
*/
package coin
