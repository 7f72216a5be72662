// Package mwt provides the decision core for seeded online exploration.
//
// # Reading Guide
//
//   - hash.go: HashID, the MurmurHash3 identity hash shared with every other implementation
//   - seed.go: Seed and ComposeSeed, the (unit, application) seed rule
//   - explorer.go: Explorer, which derives the seed, calls the policy and records the decision
//
// # Reproducibility
//
// The seed handed to a policy is
//
//	HashID(uniqueKey) + HashID(appID)   (mod 2^64)
//
// where HashID is MurmurHash3 x86_32 with seed 0 over the UTF-8 bytes of the
// string. Replay tooling in any language must reproduce this bit for bit;
// the logged probability is only meaningful for off-policy evaluation if the
// policy sees the same seed it saw online.
//
// # Key Interfaces
//
//   - Policy: choose an action from (seed, context); implementations live in mwt/policy/
//   - Recorder: persist (context, action, probability, unique key); implementations live in mwt/recorder/
package mwt
