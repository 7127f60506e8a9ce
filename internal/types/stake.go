package types

// StakeSummary aggregates the stake values of a snapshot.
type StakeSummary struct {
	TotalStakes uint64 `json:"total_stakes"`
	MinStakes   uint64 `json:"min_stakes"`
	MaxStakes   uint64 `json:"max_stakes"`
}

// IdentityStake is one entry of the ranked stake list.
type IdentityStake struct {
	Identity Identity `json:"identity"`
	Stake    uint64   `json:"stake"`
}

// PeerType classifies a node for connection admission. The zero value is
// PeerTypeUnstaked.
type PeerType uint8

const (
	PeerTypeUnstaked PeerType = iota
	PeerTypeStaked
)

func (p PeerType) String() string {
	switch p {
	case PeerTypeStaked:
		return "staked"
	default:
		return "unstaked"
	}
}

func (p PeerType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// OwnStakeInfo describes the stake backing the local node together with the
// summary of the snapshot it was read from.
type OwnStakeInfo struct {
	PeerType    PeerType `json:"peer_type"`
	Stakes      uint64   `json:"stakes"`
	TotalStakes uint64   `json:"total_stakes"`
	MinStakes   uint64   `json:"min_stakes"`
	MaxStakes   uint64   `json:"max_stakes"`
}

func (i OwnStakeInfo) IsStaked() bool {
	return i.PeerType == PeerTypeStaked
}
