// Package models defines the core domain models for HisaabKitaab.
//
// The ledger tracks money owed between the signed-in owner and each of
// their friends. A Friend carries a cached Balance; the authoritative
// record is the friend's transaction log. The sign convention is:
//
//   - paid_for_friend: the owner advanced money, balance decreases
//   - paid_by_friend: the friend advanced money, balance increases
//
// A negative balance therefore means the friend owes the owner.
//
// All amounts are decimal.Decimal to keep the balance invariant exact;
// floats are never used for money.
package models
