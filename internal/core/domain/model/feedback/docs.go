// Package feedback holds participant ratings: the 1..5 Rating scale, the
// positive/negative/neutral classification, the append-only Record and the
// in-flight Draft kept in the session store.
package feedback
