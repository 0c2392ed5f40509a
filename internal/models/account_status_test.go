package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagsFor_ExactlyOneState(t *testing.T) {
	cases := []struct {
		status  AccountStatus
		restore AccountStatus
		want    AccountFlags
	}{
		{AccountStatusPending, "", AccountFlags{}},
		{AccountStatusApproved, "", AccountFlags{IsApproved: true}},
		{AccountStatusDenied, "", AccountFlags{IsDenied: true}},
		{AccountStatusDeleted, AccountStatusApproved, AccountFlags{IsApproved: true, IsDeleted: true}},
		{AccountStatusDeleted, AccountStatusDenied, AccountFlags{IsDenied: true, IsDeleted: true}},
		{AccountStatusDeleted, AccountStatusPending, AccountFlags{IsDeleted: true}},
	}

	for _, tc := range cases {
		t.Run(string(tc.status)+"/"+string(tc.restore), func(t *testing.T) {
			flags := FlagsFor(tc.status, tc.restore)
			assert.Equal(t, tc.want, flags)

			status, restore := StatusFromFlags(flags)
			assert.Equal(t, tc.status, status)
			if tc.status == AccountStatusDeleted {
				assert.Equal(t, tc.restore, restore)
			}
		})
	}
}

func TestStatusFromFlags_AllCombinations(t *testing.T) {
	for _, approved := range []bool{false, true} {
		for _, denied := range []bool{false, true} {
			for _, deleted := range []bool{false, true} {
				status, _ := StatusFromFlags(AccountFlags{IsApproved: approved, IsDenied: denied, IsDeleted: deleted})
				require.True(t, status.Valid())

				switch {
				case deleted:
					assert.Equal(t, AccountStatusDeleted, status)
				case approved:
					assert.Equal(t, AccountStatusApproved, status)
				case denied:
					assert.Equal(t, AccountStatusDenied, status)
				default:
					assert.Equal(t, AccountStatusPending, status)
				}
			}
		}
	}
}

func TestAccount_Deny(t *testing.T) {
	pending := &Account{Status: AccountStatusPending}
	require.NoError(t, pending.Deny())
	assert.Equal(t, AccountStatusDenied, pending.Status)

	// Denying a denied account is allowed by the guard.
	require.NoError(t, pending.Deny())

	approved := &Account{Status: AccountStatusApproved}
	assert.ErrorIs(t, approved.Deny(), ErrAlreadyProcessed)

	deleted := &Account{Status: AccountStatusDeleted, RestoreStatus: AccountStatusPending}
	assert.ErrorIs(t, deleted.Deny(), ErrAlreadyProcessed)
}

func TestAccount_Approve(t *testing.T) {
	denied := &Account{Status: AccountStatusDenied}
	denied.Approve()
	assert.Equal(t, AccountStatusApproved, denied.Status)
	assert.False(t, denied.Flags().IsDenied)

	deleted := &Account{Status: AccountStatusDeleted, RestoreStatus: AccountStatusPending}
	deleted.Approve()
	assert.Equal(t, AccountStatusDeleted, deleted.Status)
	deleted.Restore()
	assert.Equal(t, AccountStatusApproved, deleted.Status)
}

func TestAccount_SoftDeleteAndRestoreKeepsPriorStatus(t *testing.T) {
	for _, prior := range []AccountStatus{AccountStatusPending, AccountStatusApproved, AccountStatusDenied} {
		a := &Account{Status: prior}
		a.SoftDelete()
		assert.Equal(t, AccountStatusDeleted, a.Status)
		assert.True(t, a.Flags().IsDeleted)

		// Deleting twice does not overwrite the remembered status.
		a.SoftDelete()

		a.Restore()
		assert.Equal(t, prior, a.Status)
		assert.Empty(t, a.RestoreStatus)
	}
}

func TestAccount_RestoreNotDeletedIsNoop(t *testing.T) {
	a := &Account{Status: AccountStatusApproved}
	a.Restore()
	assert.Equal(t, AccountStatusApproved, a.Status)
}
