package owl

// Symbolic register indices. These are conveniences for the assembler
// and disassembler; the executor addresses registers by plain index.
const (
	Zero = 0
	Ra   = 1
	Sp   = 2
	Gp   = 3
	Tp   = 4
	T0   = 5
	T1   = 6
	T2   = 7
	S0   = 8
	S1   = 9
	A0   = 10
	A1   = 11
	A2   = 12
	A3   = 13
	A4   = 14
	A5   = 15
	A6   = 16
	A7   = 17
	S2   = 18
	S3   = 19
	S4   = 20
	S5   = 21
	S6   = 22
	S7   = 23
	S8   = 24
	S9   = 25
	S10  = 26
	S11  = 27
	T3   = 28
	T4   = 29
	T5   = 30
	T6   = 31
)

// RegNames maps register index to its symbolic assembly name.
var RegNames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// regNameToIndex is the inverse of RegNames, built once at init time
// for callers that take a register by name rather than by index —
// cmd/owlvm's -set flag, for instance.
var regNameToIndex = func() map[string]uint32 {
	m := make(map[string]uint32, 64)
	for i, name := range RegNames {
		m[name] = uint32(i)
		m[fmtX(i)] = uint32(i)
	}
	return m
}()

func fmtX(i int) string {
	// avoids importing fmt for a single integer-to-string conversion
	digits := "0123456789"
	if i < 10 {
		return "x" + string(digits[i])
	}
	return "x" + string(digits[i/10]) + string(digits[i%10])
}

// RegByName looks up a register index by its symbolic or "xN" name.
// It reports false if the name is not a known register.
func RegByName(name string) (uint32, bool) {
	r, ok := regNameToIndex[name]
	return r, ok
}
