package nvconv

// MaxDim is the largest width or height Submit accepts. Hardware video
// encoders top out at 8K, so larger frames never reach this stage.
const MaxDim = 8192

// Kernel block shape. Each kernel invocation covers a 16-pixel-wide
// span of two luma rows, matching the 2:1 vertical chroma subsampling
// of NV12.
const (
	blockDimX = 16
	blockDimY = 2
)

// launchGeometry computes the grid and block dimensions for one frame.
// The grid over-allocates by up to one block in x so widths that are
// not multiples of 16 are still fully covered.
func launchGeometry(width, height int) (grid, block Dim3) {
	grid = Dim3{
		X: uint32(width/blockDimX) + 1,
		Y: uint32(height / blockDimY),
		Z: 1,
	}
	block = Dim3{X: blockDimX, Y: blockDimY, Z: 1}
	return grid, block
}

// validateFrame enforces the Submit preconditions shared by both
// conversion directions. Violations are programming errors on the
// caller's side; they are reported before any device interaction.
func validateFrame(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxDim || height > MaxDim {
		return ErrDimensions
	}
	if height%2 != 0 {
		return ErrOddHeight
	}
	return nil
}
