// Package gf929 implements arithmetic over GF(929) and the systematic
// Reed-Solomon error-correction codeword generator used by every
// composite-component (CC-A/B/C) symbol size. DataBar Expanded does not
// use it; its check character is the mod-211 parity in pkg/rssexp.
//
// 929 is prime, so the field is simply integers mod 929 under addition,
// with multiplication defined through a discrete-log table built on
// generator 3 (ord(3) = 928, the full multiplicative group).
package gf929

// Modulus is the GF(929) field size.
const Modulus = 929

// order is the size of the multiplicative group, Modulus-1.
const order = Modulus - 1

// generator is the primitive element used to build the log/antilog
// tables; the standard choice for this field (shared with PDF417's
// identical GF(929) construction).
const generator = 3

var (
	expTable [order]int // expTable[i] = generator^i mod Modulus
	logTable [Modulus]int
)

func init() {
	v := 1
	for i := 0; i < order; i++ {
		expTable[i] = v
		logTable[v] = i
		v = (v * generator) % Modulus
	}
}

// mod normalizes an arithmetic result (which may be negative) into
// [0, Modulus).
func mod(a int) int {
	a %= Modulus
	if a < 0 {
		a += Modulus
	}
	return a
}

// Add returns a+b mod 929.
func Add(a, b int) int { return mod(a + b) }

// Sub returns a-b mod 929.
func Sub(a, b int) int { return mod(a - b) }

// Mul returns a*b mod 929 via the discrete-log table; either operand may
// be zero.
func Mul(a, b int) int {
	a, b = mod(a), mod(b)
	if a == 0 || b == 0 {
		return 0
	}
	return expTable[(logTable[a]+logTable[b])%order]
}

// Neg returns -a mod 929.
func Neg(a int) int { return mod(-a) }

// genPoly builds the monic generator polynomial
//
//	g(x) = (x - 3^0)(x - 3^1)...(x - 3^(degree-1))
//
// returned as coefficients g[0..degree] with g[k] the coefficient of
// x^k (g[degree] == 1).
func genPoly(degree int) []int {
	poly := make([]int, 1, degree+1)
	poly[0] = 1
	for i := 0; i < degree; i++ {
		root := expTable[i%order]
		next := make([]int, len(poly)+1)
		for j, c := range poly {
			next[j+1] = Add(next[j+1], c)
			next[j] = Add(next[j], Neg(Mul(c, root)))
		}
		poly = next
	}
	return poly
}

// GenECC computes `degree` systematic Reed-Solomon check codewords for
// the given data codewords, over GF(929). The result is the check
// symbol sequence to append after the data codewords, highest-degree
// check codeword first.
func GenECC(data []int, degree int) []int {
	if degree <= 0 {
		return nil
	}
	poly := genPoly(degree)
	ecc := make([]int, degree)
	for _, d := range data {
		t := mod(d + ecc[degree-1])
		for j := degree - 1; j > 0; j-- {
			ecc[j] = Sub(ecc[j-1], Mul(t, poly[j]))
		}
		ecc[0] = Neg(Mul(t, poly[0]))
	}
	out := make([]int, degree)
	for i := range ecc {
		out[i] = Neg(ecc[degree-1-i])
	}
	return out
}
