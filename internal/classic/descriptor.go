package classic

import "time"

const (
	wordSize = 4
	// bufSize matches the original reader's fixed scratch buffer: 1 MiB.
	// Settings.MaxScratchWords overrides it at Open time.
	bufSize = 1024 * 1024
	// maxExt bounds how many directory extensions a Type-2 file descriptor
	// may declare.
	maxExt = 10
)

// fileDescriptor1 is the Type-1 file header: four-byte magic, directory
// extension pointers (next/lex/nex), and xnext (first free directory slot).
type fileDescriptor1 struct {
	Next  int32
	Lex   int32
	Nex   int32
	Xnext int32
}

// fileDescriptor2 is the Type-2 file header, read starting at byte offset 8
// (past the 4-byte magic and the reclen word already consumed to size the
// first record read).
type fileDescriptor2 struct {
	Reclen   int32
	Kind     int32
	Vind     int32
	Lind     int32
	Flags    int32
	Xnext    int64
	Nextrec  int64
	Nextword int32
	Lex1     int32
	Nex      int32
	Gex      int32
}

// directoryEntry1 is one of the four Type-1 directory slots per record.
type directoryEntry1 struct {
	Xblock int32
	Xnum   int32
	Xver   int32
	Xsourc string
	Xline  string
	Xtel   string
	Xdobs  int32
	Xdred  int32
	Xoff1  float32
	Xoff2  float32
	Xtype  string
	Xkind  int32
	Xqual  int32
	Xscan  int32
	Xposa  int32
}

// directoryEntry2 is one Type-2 directory slot; slot size is 4*fd2.Lind
// bytes and block/scan numbers are 8-byte words.
type directoryEntry2 struct {
	Xblock int64
	Xword  int32
	Xnum   int64
	Xver   int32
	Xsourc string
	Xline  string
	Xtel   string
	Xdobs  int32
	Xdred  int32
	Xoff1  float32
	Xoff2  float32
	Xtype  string
	Xkind  int32
	Xqual  int32
	Xposa  int32
	Xscan  int64
	Xsubs  int32
}

// sectionTable1 is the Type-1 per-scan record header: up to 4 sections,
// codes/lengths/addresses read as three separate word arrays (not
// interleaved), matching the original fread-per-array layout.
type sectionTable1 struct {
	Nbl    int32
	Bytes  int32
	Adr    int32
	Nhead  int32
	Len    int32
	Ientry int32
	Nsec   int32
	Obsnum int32
	SecCod [4]int32
	SecAdr [4]int32
	SecLen [4]int32
}

// sectionTable2 is the Type-2 per-scan record header: up to 10 sections,
// lengths/addresses as 8-byte words.
type sectionTable2 struct {
	Version int32
	Nsec    int32
	Nword   int64
	Adata   int64
	Ldata   int64
	Xnum    int64
	SecCod  [10]int32
	SecLen  [10]int64
	SecAdr  [10]int64
}

// ClassDescriptor accumulates the fields the section decoder fills in while
// walking one scan's section table. It is reset before each scan is read;
// fields a given scan's sections don't touch keep their zero value.
type ClassDescriptor struct {
	// -2 General
	UT, ST         float64
	Az, El         float32
	Tau, Tsys, Time float32
	Xunit          int32

	// -3 Position
	Source         string
	System         int32
	Epoch          float32
	Proj           int32
	Lam, Bet       float64
	Projang        float64
	Lamof, Betof   float32
	SL0P, SB0P, SK0P float64

	// -4 Spectroscopic
	Line    string
	Restf   float64
	Nchan   int32
	Rchan   float32
	Fres    float32
	Foff    float32
	Vres    float32
	Voff    float32
	Badl    float32
	Image   float64
	Vtype   int32
	Doppler float64

	// -10 Continuum drift
	Freq   float64
	Width  float32
	Npoin  int32
	Rpoin  float32
	Tref   float32
	Aref   float32
	Apos   float32
	Tres   float32
	Ares   float32
	Badc   float32
	Ctype  int32
	Cimag  float64
	Colla  float32
	Colle  float32

	// -14 Calibration
	Beeff, Foeff, Gaini, H2omm                 float32
	Pamb, Tamb, Tatms, Tchop, Tcold            float32
	Taus, Taui, Tatmi, Trec                    float32
	Cmode                                      int32
	Atfac, Alti                                float32
	Count                                      [3]float32
	Lcalof, Bcalof                             float32
	Geolong, Geolat                            float64

	// Section codes the decoder does not interpret (-5..-9 and anything
	// else unrecognized) are captured here verbatim when settings enable
	// it, keyed by section code, answering "what did we skip".
	RawSections map[int32][]byte
}

// SpectrumHeader is the normalized, caller-facing view of one scan: the
// subset of ClassDescriptor plus directory-entry fields a consumer actually
// wants, projected into conventional units (degrees, MHz, seconds).
type SpectrumHeader struct {
	ID     int
	ScanNo int
	Target string
	Line   string
	Instr  string

	RA, Dec float64
	FLO, F0 float64
	DF      float64
	VS      float64
	DT      float64
	Tsys    float64
	UTC     time.Time
}
