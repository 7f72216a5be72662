// Package policy provides reference exploration policies for mwt.Explorer.
//
// Every policy here is a pure function of the seed, the context and its own
// configuration, and reports the exact probability with which it chose the
// returned action. Actions are 1-indexed: a policy over n actions returns
// values in [1, n].
package policy
