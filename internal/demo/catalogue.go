package demo

func text(s string) *string { return &s }

func price(p float64) *float64 { return &p }

// Catalogue returns a small library of public domain books spread over nested
// documents. A few records miss fields on purpose.
func Catalogue() []Document {
	return []Document{
		{
			Name: "library/philosophy.json",
			Records: []Record{
				{
					Name:        text("Meditations"),
					Price:       price(9.99),
					Description: text("Private notes of Marcus Aurelius on self-discipline and duty."),
				},
				{
					Name:        text("Letters from a Stoic"),
					Price:       price(11.5),
					Description: text("Seneca's letters to Lucilius on living well."),
				},
				{
					Name:        text("The Republic"),
					Price:       price(14),
					Description: text("Plato's dialogue on justice & the ideal state."),
				},
			},
		},
		{
			Name: "library/fiction/russian.json",
			Records: []Record{
				{
					Name:        text("War and Peace"),
					Price:       price(19.99),
					Description: text("Tolstoy's chronicle of five families during the Napoleonic wars."),
				},
				{
					Name:  text("Crime and Punishment"),
					Price: price(12),
				},
			},
		},
		{
			Name: "library/fiction/english.json",
			Records: []Record{
				{
					Name:        text("Pride and Prejudice"),
					Price:       price(8.75),
					Description: text("Elizabeth Bennet meets Mr. Darcy."),
				},
				{
					Name:        text("Frankenstein"),
					Description: text("Mary Shelley's tale of a \"modern Prometheus\"."),
				},
				{
					Name:        text("The Picture of Dorian Gray"),
					Price:       price(7.5),
					Description: text("Oscar Wilde's only novel, about a portrait that ages."),
				},
			},
		},
		{
			Name: "library/science/origin.json",
			Records: []Record{
				{
					Name:        text("On the Origin of Species"),
					Price:       price(15),
					Description: text("Darwin's case for evolution by natural selection."),
				},
			},
		},
		{
			Name: "library/misc/unlabelled.json",
			Records: []Record{
				{Price: price(5)},
				{Description: text("A book that lost its cover <and its title>.")},
			},
		},
	}
}
