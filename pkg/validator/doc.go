// Package validator builds declarative validation out of small Rule values.
//
// Each rule pairs a Check func with the ValidationError reported when the
// check fails. Apply evaluates rules in order and returns every failure as
// ValidationErrors, which satisfies the error interface and survives
// wrapping, so callers can join it with their own sentinels:
//
//	err := validator.Apply(
//		validator.InListCaseInsensitive("LOG_FORMAT", cfg.LogFormat, []string{"text", "json"}),
//		validator.MinNum("QR_SIZE", cfg.QRSize, 1),
//	)
//	if err != nil {
//		return errors.Join(ErrInvalidConfig, err)
//	}
//
// ExtractValidationErrors recovers the field-level failures from a wrapped
// error; the handler package uses it to add per-field details to JSON error
// bodies and to answer 400.
//
// Rules are stateless and safe for concurrent use.
package validator
