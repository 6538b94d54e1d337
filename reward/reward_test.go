package reward

import (
	"testing"

	"github.com/therewillbecode/Fae-1/contract"
	"github.com/therewillbecode/Fae-1/escrow"
	"github.com/therewillbecode/Fae-1/ids"
)

func TestMintInstallsOneShotEscrow(t *testing.T) {
	src := contract.NewIDSource([]byte("tx-reward"))
	escrows := map[ids.EntryID]*contract.Contract{}

	id := Mint(src, escrows)

	entry, err := id.Entry()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := escrows[entry]; !ok {
		t.Fatal("expected the reward escrow to be resident under its entry id")
	}

	c := escrows[entry]
	val, next, err := contract.Invoke(c, escrow.NewDynamic(struct{}{}), escrows, src, &contract.OutputWriter{})
	if err != nil {
		t.Fatal(err)
	}
	if next != nil {
		t.Fatal("expected the reward escrow to spend on its first call")
	}
	var tok Token
	if err := val.As(&tok); err != nil || tok.Amount != 1 {
		t.Fatalf("got %+v, %v", tok, err)
	}
}
