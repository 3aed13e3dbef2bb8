// Package nec computes the inputs of Schedule NEC of U.S. Form 1040-NR from
// brokerage exports.
//
// Two tables are produced:
//   - Line 1 detail: for each dividend payment, the fraction the fund family
//     reports as interest-related and the resulting exempt amount.
//   - Line 16 detail: one row per disposed lot, with the columns (a) to (g)
//     of the form.
//
// The package holds the engine shared by all brokers: money and percentage
// parsing, the exemption reference Store, lot Inventories with FIFO,
// highest-cost and lowest-cost selection, and the Report. A TaxYear bundles
// them for one run. Provider packages (vanguard, flatrate, ishares) fill the
// Store; broker packages (morganstanley, fidelity, cashapp, robinhood,
// schwab, transfer) reduce statements into the Report.
package nec
