// Package custodytest provides helpers shared by tests of all packages.
package custodytest
