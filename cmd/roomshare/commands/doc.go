// Package commands defines the roomshare CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - (none)       Open the interactive terminal client
//   - rooms        List every registered room
//   - rents        List the stays booked by your account
//   - history      Show every rental recorded for a room
//   - share        Register a room for rent
//   - rent         Book a stay and pay for it
//   - deactivate   Stop a room from taking bookings (owner only)
//   - reset        Clear a room's rental schedule (owner only)
//   - version      Show version
//
// # Implementation
//
// The root command resolves configuration, dials the RPC endpoint and binds
// the contract before any subcommand runs, so handlers share one client,
// one keystore-backed wallet and one block-explorer link builder.
package commands
