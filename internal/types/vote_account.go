package types

// VoteAccountInfo is a single vote account entry as returned by the
// getVoteAccounts RPC method.
type VoteAccountInfo struct {
	VotePubkey       string `json:"votePubkey"`
	NodePubkey       string `json:"nodePubkey"`
	ActivatedStake   uint64 `json:"activatedStake"`
	Commission       uint8  `json:"commission"`
	EpochVoteAccount bool   `json:"epochVoteAccount"`
	LastVote         uint64 `json:"lastVote"`
	RootSlot         uint64 `json:"rootSlot"`
}

// VoteAccountStatus is the stake report consumed by the registry. Current
// accounts come first, delinquent ones second.
type VoteAccountStatus struct {
	Current    []VoteAccountInfo `json:"current"`
	Delinquent []VoteAccountInfo `json:"delinquent"`
}

// Len returns the number of records in both lists.
func (s *VoteAccountStatus) Len() int {
	return len(s.Current) + len(s.Delinquent)
}

// All returns current then delinquent accounts in report order.
func (s *VoteAccountStatus) All() []VoteAccountInfo {
	all := make([]VoteAccountInfo, 0, s.Len())
	all = append(all, s.Current...)
	all = append(all, s.Delinquent...)
	return all
}
