// Package io reads and writes the tournament data files.
//
// # Results
//
// Bracket results map a slot name to one match record:
//
//	{
//	  "Winners Final": {"player1": "Player A", "score1": 11, "player2": "Player C", "score2": 6},
//	  "Grand Final":   {"player1": "Player A", "score1": "W", "player2": "Player B", "score2": "L"}
//	}
//
// Scores may be numbers or strings. Slots missing from the file are drawn
// as "TBD". Use [ReadResults] or [ImportResults]; both reject unknown slot
// names with [layout.ErrUnknownSlot].
//
// # Donors
//
// The donors file is the list written by "orchard donors fetch":
//
//	[
//	  {"Donor": "Granny Smith", "Contribution": "$25.00", "Comment": "Go apples!"}
//	]
//
// Contributions are dollar strings on disk and cents in memory. Use
// [ReadDonors]/[ImportDonors] and [WriteDonors]/[ExportDonors].
//
// # Roster
//
// The roster lists seeded players and commentators. It may be YAML or JSON
// (YAML is a superset of JSON, so one decoder reads both):
//
//	players:
//	  - {id: appleseed, seed: 1, flavor: "Defending champion"}
//	  - {id: granny, seed: 2}
//	commentators: [5ec684620cfca96246aa9bda, 5f3718f11fee2b2e8c27d55f]
//
// Use [ReadRoster] or [ImportRoster].
//
// [layout.ErrUnknownSlot]: github.com/matzehuels/orchard/pkg/layout.ErrUnknownSlot
package io
