/*
Package gconf stores extension configuration as a singleton inside the
database.

Configuration is loaded from the "conf" section of a genesis file, validated
and written under the "_c:<package>" key so that a restarted process reads
the same values from its store.
*/
package gconf
