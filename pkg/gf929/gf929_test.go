package gf929

import "testing"

func TestExpLogInverse(t *testing.T) {
	for v := 1; v < Modulus; v++ {
		i := logTable[v]
		if expTable[i] != v {
			t.Fatalf("expTable[logTable[%d]] = %d, want %d", v, expTable[i], v)
		}
	}
}

func TestMulIdentity(t *testing.T) {
	for a := 0; a < Modulus; a++ {
		if got := Mul(a, 1); got != a {
			t.Errorf("Mul(%d,1) = %d, want %d", a, got, a)
		}
		if got := Mul(a, 0); got != 0 {
			t.Errorf("Mul(%d,0) = %d, want 0", a, got)
		}
	}
}

func TestMulCommutative(t *testing.T) {
	cases := [][2]int{{3, 5}, {928, 2}, {100, 200}, {1, 1}}
	for _, c := range cases {
		if Mul(c[0], c[1]) != Mul(c[1], c[0]) {
			t.Errorf("Mul(%d,%d) != Mul(%d,%d)", c[0], c[1], c[1], c[0])
		}
	}
}

func TestGenPolyIsMonic(t *testing.T) {
	for degree := 1; degree <= 8; degree++ {
		poly := genPoly(degree)
		if len(poly) != degree+1 {
			t.Fatalf("genPoly(%d): len = %d, want %d", degree, len(poly), degree+1)
		}
		if poly[degree] != 1 {
			t.Errorf("genPoly(%d): leading coefficient = %d, want 1", degree, poly[degree])
		}
	}
}

func TestGenECCLength(t *testing.T) {
	data := []int{1, 2, 3, 4, 5}
	for degree := 1; degree <= 8; degree++ {
		ecc := GenECC(data, degree)
		if len(ecc) != degree {
			t.Errorf("GenECC(..., %d): len = %d, want %d", degree, len(ecc), degree)
		}
		for _, c := range ecc {
			if c < 0 || c >= Modulus {
				t.Errorf("GenECC(..., %d): codeword %d out of range", degree, c)
			}
		}
	}
}

func TestGenECCZeroDegree(t *testing.T) {
	if ecc := GenECC([]int{1, 2, 3}, 0); ecc != nil {
		t.Errorf("GenECC(..., 0) = %v, want nil", ecc)
	}
}

// TestGenECCDeterministic guards against accidental nondeterminism from
// shared table state across calls.
func TestGenECCDeterministic(t *testing.T) {
	data := []int{10, 20, 30, 40}
	a := GenECC(data, 4)
	b := GenECC(data, 4)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("GenECC not deterministic at %d: %d vs %d", i, a[i], b[i])
		}
	}
}
