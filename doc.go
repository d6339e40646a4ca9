// Package income provides the types and functions to explore the annual
// income statements of a company.
//
// The core functionalities include:
//   - Records: one fiscal year of revenue, net income, gross profit,
//     operating income and earnings per share, as fetched from a data provider.
//   - View state: the filter criteria (year, revenue and net income ranges)
//     and the sort a user has selected, changed only through explicit transitions.
//   - Derivation: a pure function computing the filtered and sorted sequence
//     to display from the full fetched sequence and the view state.
//   - Session: the single fetch backing a view, and its loading, failed or
//     loaded status.
//
// This package serves as the foundational logic for the `isv` command-line
// tool. Data providers live in sub packages (see fmp), rendering in renderer.
package income
