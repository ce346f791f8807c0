package extract

import (
	"fmt"
	"reflect"
	"testing"
)

func TestClassifyPolarity_Basic(t *testing.T) {
	sentences := []string{
		"This will improve parks.",
		"There is a risk of flooding.",
		"The plan will help families.",
		"Nothing notable here.",
		"Taxes increase and so does the burden.",
	}

	pros, cons := ClassifyPolarity(sentences)

	wantPros := []string{"This will improve parks.", "The plan will help families."}
	wantCons := []string{"There is a risk of flooding."}

	if !reflect.DeepEqual(pros, wantPros) {
		t.Errorf("Expected pros %q, got %q", wantPros, pros)
	}
	if !reflect.DeepEqual(cons, wantCons) {
		t.Errorf("Expected cons %q, got %q", wantCons, cons)
	}
}

func TestClassifyPolarity_AmbiguousDropped(t *testing.T) {
	// "reduce costs" is a pro phrase but "reduce" is also a con word
	pros, cons := ClassifyPolarity([]string{"The program may reduce costs."})
	if len(pros) != 0 || len(cons) != 0 {
		t.Errorf("Expected ambiguous sentence dropped, got pros=%q cons=%q", pros, cons)
	}
}

func TestClassifyPolarity_Disjoint(t *testing.T) {
	sentences := []string{
		"Support for students.", "A real concern.", "Support despite the concern.",
		"Protect the river.", "Harm to the river.", "Enable growth and limit harm.",
		"An opportunity.", "A challenge.", "A problem and a benefit.",
	}

	pros, cons := ClassifyPolarity(sentences)

	inPros := make(map[string]bool)
	for _, p := range pros {
		inPros[p] = true
	}
	for _, c := range cons {
		if inPros[c] {
			t.Errorf("Sentence %q in both pros and cons", c)
		}
	}
}

func TestClassifyPolarity_Cap(t *testing.T) {
	var sentences []string
	for i := 0; i < 12; i++ {
		sentences = append(sentences, fmt.Sprintf("Benefit number %d.", i))
		sentences = append(sentences, fmt.Sprintf("Risk number %d.", i))
	}

	pros, cons := ClassifyPolarity(sentences)

	if len(pros) != MaxPolarity || len(cons) != MaxPolarity {
		t.Fatalf("Expected %d pros and cons, got %d and %d", MaxPolarity, len(pros), len(cons))
	}
	if pros[0] != "Benefit number 0." || pros[7] != "Benefit number 7." {
		t.Errorf("Expected first matches in input order, got %q", pros)
	}
}

func TestClassifyPolarity_CustomVocabulary(t *testing.T) {
	v := DefaultVocabulary()
	v.Pros = []string{"great"}
	v.Cons = []string{"bad"}

	e, err := NewExtractor(v)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	pros, cons := e.ClassifyPolarity([]string{"A great idea.", "A bad idea.", "It will help."})
	if len(pros) != 1 || pros[0] != "A great idea." {
		t.Errorf("Unexpected pros: %q", pros)
	}
	if len(cons) != 1 || cons[0] != "A bad idea." {
		t.Errorf("Unexpected cons: %q", cons)
	}
}
