package gesture

// Classify maps one frame to a gesture using ordered threshold rules.
// The first matching rule wins; there is no hysteresis or temporal smoothing,
// so one frame always yields exactly one decision. All comparisons are strict:
// a flex value equal to FistMax (or OpenMin) does not match.
func Classify(f Frame, th Thresholds) Gesture {
	switch {
	case f.Flex1 < th.FistMax && f.Flex2 < th.FistMax && f.Touch1:
		return Fist
	case f.Flex1 > th.OpenMin && f.Flex2 > th.OpenMin && f.Touch2:
		return OpenHand
	case f.AccelX < -th.Tilt:
		return Left
	case f.AccelX > th.Tilt:
		return Right
	}
	return None
}
