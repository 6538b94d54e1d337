package ids

import "testing"

func TestShortenIgnoresNonce(t *testing.T) {
	tx := TransactionID{1, 2, 3}
	a := TransactionOutput{Tx: tx, Index: 0}
	b := a.WithNonce(5)

	if Shorten(a) != Shorten(b) {
		t.Fatalf("Shorten should ignore nonce assertions, got %v != %v", Shorten(a), Shorten(b))
	}
}

func TestShortenDistinguishesVariants(t *testing.T) {
	tx := TransactionID{1}
	txout := TransactionOutput{Tx: tx, Index: 0}
	short := ShortContractID{9}
	inout := InputOutput{Tx: tx, ShortInput: short, Index: 0}

	if Shorten(txout) == Shorten(inout) {
		t.Fatalf("different ContractID variants must not collide")
	}
}

func TestShortenDistinguishesIndex(t *testing.T) {
	tx := TransactionID{7}
	a := TransactionOutput{Tx: tx, Index: 0}
	b := TransactionOutput{Tx: tx, Index: 1}
	if Shorten(a) == Shorten(b) {
		t.Fatalf("different indices must not collide")
	}
}

func TestNonceSuffixParsing(t *testing.T) {
	cases := []struct {
		in       string
		wantBase string
		wantN    uint64
		wantOK   bool
	}{
		{"txout:abcd:0", "txout:abcd:0", 0, false},
		{"txout:abcd:0:#3", "txout:abcd:0", 3, true},
		{"txout:abcd:0 :# 3", "txout:abcd:0", 3, true},
	}
	for _, c := range cases {
		base, n, ok := ParseNonceSuffix(c.in)
		if ok != c.wantOK || (ok && (base != c.wantBase || n != c.wantN)) {
			t.Errorf("ParseNonceSuffix(%q) = (%q, %d, %v), want (%q, %d, %v)",
				c.in, base, n, ok, c.wantBase, c.wantN, c.wantOK)
		}
	}
}

func TestContractIDStringIncludesNonce(t *testing.T) {
	tx := TransactionID{1}
	c := TransactionOutput{Tx: tx, Index: 2}.WithNonce(4)
	s := c.String()
	if s == "" {
		t.Fatal("empty string")
	}
	base, n, ok := ParseNonceSuffix(s)
	if !ok || n != 4 {
		t.Fatalf("expected nonce suffix 4 in %q, got base=%q n=%d ok=%v", s, base, n, ok)
	}
}

func TestJustTransactionNonceRoundTrip(t *testing.T) {
	tx := TransactionID{5}
	bare := JustTransaction{Tx: tx}
	if n, ok := bare.Nonce(); ok || n != 0 {
		t.Fatalf("bare JustTransaction must carry no nonce, got %d, %v", n, ok)
	}

	withNonce := bare.WithNonce(7)
	n, ok := withNonce.Nonce()
	if !ok || n != 7 {
		t.Fatalf("expected nonce 7, got %d, %v", n, ok)
	}
	if base, parsed, ok := ParseNonceSuffix(withNonce.String()); !ok || parsed != 7 {
		t.Fatalf("expected nonce suffix 7 in %q, got base=%q n=%d ok=%v", withNonce.String(), base, parsed, ok)
	}
}
