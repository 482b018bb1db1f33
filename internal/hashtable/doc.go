// Package hashtable implements the membership index of a node list.
//
// A Table maps a search-state key to the arena handle of its node. It uses
// open addressing with linear probing over a power-of-two slot array and
// backward-shift deletion, so there are no tombstones and probe sequences
// stay short under the insert/remove churn of an A* search.
//
// Keys supply their own Hash; the table runs it through hash.Mix64 before
// masking, which keeps coordinate-like keys from clustering.
//
// A Table is not safe for concurrent use.
package hashtable
