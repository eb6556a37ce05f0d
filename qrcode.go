// Package qrencode encodes text into QR Code symbols (ISO/IEC 18004 model 2,
// versions 1 to 40).
//
// The smallest version able to hold the content is chosen automatically, with
// the content split into numeric, alphanumeric and byte segments to minimise
// its encoded length. The data mask is chosen by penalty score unless one is
// given.
//
//	q, err := qrencode.New("https://example.org", qrencode.M)
//	if err != nil {
//		return err
//	}
//	fmt.Print(q.ToSmallString(false))
package qrencode

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/townmi/qrencode/bitset"
)

// Encode a QR Code and return a raw PNG image.
//
// size is both the image width and height in pixels. If size is too small
// then a larger image is silently returned. Negative values for size cause a
// variable sized image to be returned: see the documentation for Image().
func Encode(content string, level Level, size int) ([]byte, error) {
	q, err := New(content, level)
	if err != nil {
		return nil, err
	}

	return q.PNG(size)
}

// An Option configures New and NewSegments.
type Option func(*options)

type options struct {
	version    int
	hasVersion bool

	mask    int
	hasMask bool

	logger     *log.Logger
	newBitmap  func(w, h int) Bitmap
	sequential bool
}

// WithVersion forces the symbol version instead of choosing the smallest that
// fits. The content must fit the version.
func WithVersion(version int) Option {
	return func(o *options) {
		o.version = version
		o.hasVersion = true
	}
}

// WithMask forces mask pattern 0-7, skipping penalty scoring.
func WithMask(mask int) Option {
	return func(o *options) {
		o.mask = mask
		o.hasMask = true
	}
}

// WithLogger sets the logger receiving debug records. The default is
// log.Default().
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithBitmap sets the allocator of module storage. Symbols built with it
// expose their storage through Symbol.Bitmap.
func WithBitmap(newBitmap func(w, h int) Bitmap) Option {
	return func(o *options) {
		o.newBitmap = newBitmap
	}
}

// WithSequentialMasks scores the eight mask candidates one after another
// rather than concurrently.
func WithSequentialMasks() Option {
	return func(o *options) {
		o.sequential = true
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:    log.Default(),
		newBitmap: newDefaultBitmap,
	}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

func (o *options) validate() error {
	if o.hasVersion {
		if err := validVersion(o.version); err != nil {
			return err
		}
	}
	if o.hasMask && (o.mask < 0 || o.mask >= numMasks) {
		return fmt.Errorf("%w: %d", ErrInvalidMask, o.mask)
	}
	if o.logger == nil {
		o.logger = log.Default()
	}
	if o.newBitmap == nil {
		o.newBitmap = newDefaultBitmap
	}

	return nil
}

// A QRCode is a finished symbol and the settings used to draw it.
type QRCode struct {
	// Original content encoded.
	Content string

	// QR code type.
	Level         Level
	VersionNumber int

	// Mask pattern applied, 0-7.
	Mask int

	// User settable drawing options.
	ForegroundColor color.Color
	BackgroundColor color.Color

	// Disable the QR code border.
	DisableBorder bool

	segments []Segment
	symbol   *Symbol
}

// New encodes content at the given error correction level.
//
// Content holding bytes outside 7-bit ASCII is encoded as UTF-8 in byte mode
// with a UTF-8 ECI designator.
func New(content string, level Level, opts ...Option) (*QRCode, error) {
	if !level.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, int(level))
	}
	if content == "" {
		return nil, ErrEmptyContent
	}

	return build(content, newDataEncoder(level, content), opts)
}

// NewSegments encodes caller chosen segments, in order, at the given error
// correction level. Each segment's data must be valid in its mode.
func NewSegments(segments []Segment, level Level, opts ...Option) (*QRCode, error) {
	if !level.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, int(level))
	}
	if err := validateSegments(segments); err != nil {
		return nil, err
	}

	segments = append([]Segment(nil), segments...)

	return build(segmentsString(segments), newSegmentsEncoder(level, segments), opts)
}

func build(content string, enc *dataEncoder, opts []Option) (*QRCode, error) {
	o := newOptions(opts)
	if err := o.validate(); err != nil {
		return nil, err
	}

	var (
		version *qrCodeVersion
		e       *encoded
		err     error
	)
	if o.hasVersion {
		version, e, err = enc.forVersion(o.version)
	} else {
		version, e, err = enc.chooseVersion()
	}
	if err != nil {
		return nil, err
	}

	o.logger.Debug("qrencode: version chosen",
		"version", version.version,
		"level", enc.level,
		"class", e.class,
		"bits", e.bits.Len(),
		"capacity", version.numDataBits(),
		"eci", enc.eci,
		"segments", segmentsSummary(e.segments))

	symbol, err := encodeSymbol(e.bits, version, o)
	if err != nil {
		return nil, err
	}

	return &QRCode{
		Content: content,

		Level:         enc.level,
		VersionNumber: version.version,
		Mask:          symbol.mask,

		ForegroundColor: color.Black,
		BackgroundColor: color.White,

		segments: e.segments,
		symbol:   symbol,
	}, nil
}

// encodeSymbol pads and error protects data, which must hold the terminator,
// then draws and masks the symbol.
func encodeSymbol(data *bitset.Bitset, version *qrCodeVersion, o *options) (*Symbol, error) {
	data = bitset.Clone(data)

	if err := addPadding(data, version); err != nil {
		return nil, err
	}

	encoded, err := encodeBlocks(data, version)
	if err != nil {
		return nil, err
	}

	base, err := buildBlankSymbol(version.version, o.newBitmap)
	if err != nil {
		return nil, err
	}
	if err := placeData(base, version.version, encoded); err != nil {
		return nil, err
	}

	if o.hasMask {
		return maskedSymbol(base, version, o.mask, o.newBitmap)
	}

	return chooseMask(base, version, o)
}

// maskedSymbol returns a copy of base with format information for mask drawn
// and mask applied.
func maskedSymbol(base Bitmap, version *qrCodeVersion, mask int, newBitmap func(w, h int) Bitmap) (*Symbol, error) {
	b, err := allocBitmap(newBitmap, version.symbolSize())
	if err != nil {
		return nil, err
	}
	copyBitmap(b, base)

	if err := writeFormatInfo(b, version.level, mask); err != nil {
		return nil, err
	}
	applyMask(b, version.version, mask)

	return &Symbol{
		bitmap:  b,
		version: version.version,
		level:   version.level,
		mask:    mask,
		penalty: -1,
	}, nil
}

// chooseMask tries every mask and keeps the one with the lowest penalty, the
// lowest mask id winning ties.
func chooseMask(base Bitmap, version *qrCodeVersion, o *options) (*Symbol, error) {
	var trials [numMasks]*Symbol

	trial := func(mask int) error {
		s, err := maskedSymbol(base, version, mask, o.newBitmap)
		if err != nil {
			return err
		}
		s.penalty = Penalty(s.bitmap)
		trials[mask] = s

		return nil
	}

	if o.sequential {
		for mask := 0; mask < numMasks; mask++ {
			if err := trial(mask); err != nil {
				return nil, err
			}
		}
	} else {
		var g errgroup.Group
		for mask := 0; mask < numMasks; mask++ {
			mask := mask
			g.Go(func() error {
				return trial(mask)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	best := trials[0]
	for _, s := range trials {
		o.logger.Debug("qrencode: mask scored", "mask", s.mask, "penalty", s.penalty)

		if s.penalty < best.penalty {
			best = s
		}
	}

	o.logger.Debug("qrencode: mask chosen", "mask", best.mask, "penalty", best.penalty)

	return best, nil
}

// Symbol returns the finished symbol.
func (q *QRCode) Symbol() *Symbol {
	return q.symbol
}

// Segments returns the segments the content was encoded as.
func (q *QRCode) Segments() []Segment {
	return append([]Segment(nil), q.segments...)
}

// Symbol is a finished, masked QR Code symbol without quiet zone.
type Symbol struct {
	bitmap  Bitmap
	version int
	level   Level
	mask    int

	// penalty is -1 when the mask was given rather than scored.
	penalty int
}

// Module reports whether module (x, y) is dark. Coordinates outside the
// symbol are light.
func (s *Symbol) Module(x, y int) bool {
	v, _ := s.bitmap.Get(x, y)
	return v
}

// Size returns the number of modules on each side.
func (s *Symbol) Size() int {
	w, _ := s.bitmap.Dims()
	return w
}

// Bytes returns the rows of the symbol packed most significant bit first,
// each row starting on a byte boundary.
func (s *Symbol) Bytes() []byte {
	size := s.Size()

	out := make([]byte, 0, size*((size+7)/8))
	for y := 0; y < size; y++ {
		out = append(out, s.bitmap.Row(y)...)
	}

	return out
}

// Bitmap returns the module storage of the symbol.
func (s *Symbol) Bitmap() Bitmap {
	return s.bitmap
}

func (s *Symbol) Version() int { return s.version }
func (s *Symbol) Level() Level { return s.level }
func (s *Symbol) Mask() int    { return s.mask }

// Penalty returns the penalty score of the symbol.
func (s *Symbol) Penalty() int {
	if s.penalty < 0 {
		return Penalty(s.bitmap)
	}

	return s.penalty
}
