package safe

// ResolveNonce picks the sequence number for the next proposal.
//
// With nothing pending the confirmed on-chain counter is next. If the chain
// has already advanced past every pending proposal, the pending entries are
// stale (or since executed) and the on-chain counter wins again. Otherwise the
// new proposal is appended after the highest pending one. The policy never
// reuses or skips a number, so the proposal cannot collide with or jump ahead
// of anything in flight.
func ResolveNonce(onChainNonce uint64, pending []uint64) uint64 {
	if len(pending) == 0 {
		return onChainNonce
	}

	highest := pending[0]
	for _, n := range pending[1:] {
		if n > highest {
			highest = n
		}
	}

	if onChainNonce > highest {
		return onChainNonce
	}
	return highest + 1
}
