// Package errors provides structured, coded errors for the item-power selector.
//
// Errors carry a Code, a user-facing message, an optional cause and metadata.
// Wrapping preserves the code of the innermost *Error so callers can branch on
// intent without string matching.
//
// # Catalog errors
//
// Power calculation fails in two ways, neither of which is worth retrying:
//
//	errors.ItemNotFound("T4_OFF_SHIELD")                         // CodeNotFound
//	errors.DataInconsistency("T4_OFF_SHIELD", "no enchant %d", 4) // CodeDataLoss
//
// Use IsCatalogDefect to test for either.
//
// # Upstream services
//
// HTTP failures from the market service are mapped with CodeFromHTTPStatus and
// wrapped with WrapWithCode so the round loop can log them with a stable code.
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRange("min_tier", slot.MinTier, 1, 8, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # gRPC
//
// Handlers return errors.ToGRPCError(err); clients call errors.FromGRPCError to
// recover the code and metadata.
package errors
