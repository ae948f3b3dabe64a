package domain

// DiameterClass is a diameter class label in millimeters. A class value of C
// covers diameters in (C-20, C]; the smallest class additionally absorbs
// everything below it and the largest class absorbs everything above it.
type DiameterClass int

// DiameterClasses is the fixed ascending sequence of class thresholds (mm).
var DiameterClasses = []DiameterClass{
	80, 100, 120, 140, 160, 180, 200, 220, 240, 260, 280, 300,
	320, 340, 360, 380, 400, 420, 440, 460, 480, 500, 520, 540, 560, 580,
}

// ClassIndex returns the index of a class within DiameterClasses, or -1 if the
// value is not a known class.
func ClassIndex(c DiameterClass) int {
	for i, dc := range DiameterClasses {
		if dc == c {
			return i
		}
	}
	return -1
}
