// Package walletledger implements the wallet ledger inside the finance-core
// context.
//
// The module owns account balances and the append-only transaction log. It is
// the only writer of both: every credit and debit appends a transaction and
// moves the balance in one atomic step, so a balance always equals the signed
// sum of its transactions. Business rules live in application/domain layers
// and infrastructure stays behind ports and adapters.
package walletledger
