// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import "sync"

// approvalLocks serializes mutations per approval. Votes can arrive for
// the same approval through both the /approvals/:id and /messages/:id
// routes, so locking on the resolved approval ID is what keeps the
// read-mutate-write cycle atomic.
var approvalLocks sync.Map // int64 -> *sync.Mutex

func lockApproval(id int64) (unlock func()) {
	v, _ := approvalLocks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
