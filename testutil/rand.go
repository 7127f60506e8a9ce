package testutil

import (
	"crypto/rand"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/babylonlabs-io/stake-registry/internal/types"
)

// RandomIdentity returns a random node identity.
func RandomIdentity() types.Identity {
	var id types.Identity
	// crypto/rand.Read never returns an error
	_, _ = rand.Read(id[:])
	return id
}

// VoteAccount builds a report entry for id with the given stake.
func VoteAccount(id types.Identity, stake uint64) types.VoteAccountInfo {
	return types.VoteAccountInfo{
		VotePubkey:       RandomIdentity().String(),
		NodePubkey:       id.String(),
		ActivatedStake:   stake,
		EpochVoteAccount: true,
	}
}

// RandomVoteAccounts returns n entries with distinct random identities and
// stakes below maxStake.
func RandomVoteAccounts(n int, maxStake uint64) []types.VoteAccountInfo {
	accounts := make([]types.VoteAccountInfo, 0, n)
	for range n {
		accounts = append(accounts, VoteAccount(RandomIdentity(), gofakeit.Uint64()%maxStake))
	}
	return accounts
}
