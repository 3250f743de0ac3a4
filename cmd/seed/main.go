// Seeds the catalog with a starter set of books. Books already present
// (by ISBN) are skipped, so the command is safe to re-run.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"

	"github.com/georgerossis/book-rental-system/config"
	"github.com/georgerossis/book-rental-system/model"
	bookrepo "github.com/georgerossis/book-rental-system/repository/book"
	"github.com/georgerossis/book-rental-system/util/database"
)

var seedBooks = []model.Book{
	{Title: "The Fellowship of the Ring", Author: "J. R. R. Tolkien", ISBN: "9780261102354", Description: "The first part of The Lord of the Rings, where Frodo begins his journey to destroy the One Ring.", Genre: "Fantasy", PublishedYear: 1954, TotalCopies: 5},
	{Title: "The Two Towers", Author: "J. R. R. Tolkien", ISBN: "9780261102361", Description: "The second volume of The Lord of the Rings, following the breaking of the Fellowship.", Genre: "Fantasy", PublishedYear: 1954, TotalCopies: 5},
	{Title: "The Return of the King", Author: "J. R. R. Tolkien", ISBN: "9780261102378", Description: "The final battle for Middle-earth and the conclusion of the quest to destroy the One Ring.", Genre: "Fantasy", PublishedYear: 1955, TotalCopies: 5},
	{Title: "The Hobbit", Author: "J. R. R. Tolkien", ISBN: "9780261102217", Description: "Bilbo Baggins joins a company of dwarves on a quest to reclaim a lost mountain kingdom.", Genre: "Fantasy", PublishedYear: 1937, TotalCopies: 9},
	{Title: "The Silmarillion", Author: "J. R. R. Tolkien", ISBN: "9780618391110", Description: "Mythic tales of the First Age of Middle-earth, from the creation of the world to great wars.", Genre: "Fantasy", PublishedYear: 1977, TotalCopies: 4},
	{Title: "A Game of Thrones", Author: "George R. R. Martin", ISBN: "9780553103540", Description: "The first book in A Song of Ice and Fire, telling the story of noble houses vying for the Iron Throne.", Genre: "Fantasy", PublishedYear: 1996, TotalCopies: 7},
	{Title: "A Clash of Kings", Author: "George R. R. Martin", ISBN: "9780553108033", Description: "The second book in A Song of Ice and Fire, as rival kings fight for control of Westeros.", Genre: "Fantasy", PublishedYear: 1998, TotalCopies: 7},
	{Title: "A Storm of Swords", Author: "George R. R. Martin", ISBN: "9780553106633", Description: "Wars, betrayals and shocking twists as the battle for the Iron Throne intensifies.", Genre: "Fantasy", PublishedYear: 2000, TotalCopies: 7},
	{Title: "Harry Potter and the Philosopher's Stone", Author: "J. K. Rowling", ISBN: "9780747532699", Description: "An orphan boy discovers he is a wizard and attends Hogwarts School of Witchcraft and Wizardry.", Genre: "Fantasy", PublishedYear: 1997, TotalCopies: 10},
	{Title: "Harry Potter and the Chamber of Secrets", Author: "J. K. Rowling", ISBN: "9780747538493", Description: "Harry returns to Hogwarts and uncovers the mystery of the Chamber of Secrets.", Genre: "Fantasy", PublishedYear: 1998, TotalCopies: 10},
	{Title: "Harry Potter and the Prisoner of Azkaban", Author: "J. K. Rowling", ISBN: "9780747542155", Description: "A dangerous prisoner escapes from Azkaban and seems to be hunting Harry.", Genre: "Fantasy", PublishedYear: 1999, TotalCopies: 10},
	{Title: "The Name of the Wind", Author: "Patrick Rothfuss", ISBN: "9780756405892", Description: "Kvothe recounts his life story, from a traveling troupe to a legendary arcanist.", Genre: "Fantasy", PublishedYear: 2007, TotalCopies: 6},
	{Title: "The Wise Man's Fear", Author: "Patrick Rothfuss", ISBN: "9780756407124", Description: "Kvothe continues his journey through the University, distant lands and dangerous encounters.", Genre: "Fantasy", PublishedYear: 2011, TotalCopies: 6},
	{Title: "Mistborn: The Final Empire", Author: "Brandon Sanderson", ISBN: "9780765311788", Description: "A world of ash and mist, where a small crew plans to overthrow an immortal tyrant.", Genre: "Fantasy", PublishedYear: 2006, TotalCopies: 8},
	{Title: "The Well of Ascension", Author: "Brandon Sanderson", ISBN: "9780765316882", Description: "After toppling the Lord Ruler, the crew must now learn how to rule an empire.", Genre: "Fantasy", PublishedYear: 2007, TotalCopies: 8},
	{Title: "The Hero of Ages", Author: "Brandon Sanderson", ISBN: "9780765316899", Description: "As ash falls and mists close in, the final secrets of the Mistborn world are revealed.", Genre: "Fantasy", PublishedYear: 2008, TotalCopies: 8},
	{Title: "The Way of Kings", Author: "Brandon Sanderson", ISBN: "9780765326355", Description: "Epic war, shattered oaths and strange storms on the world of Roshar.", Genre: "Fantasy", PublishedYear: 2010, TotalCopies: 5},
	{Title: "Words of Radiance", Author: "Brandon Sanderson", ISBN: "9780765326362", Description: "The Knights Radiant begin to re-emerge as ancient enemies return.", Genre: "Fantasy", PublishedYear: 2014, TotalCopies: 5},
	{Title: "Oathbringer", Author: "Brandon Sanderson", ISBN: "9780765326379", Description: "Dalinar strives to unite the world as the true enemy declares war.", Genre: "Fantasy", PublishedYear: 2017, TotalCopies: 5},
	{Title: "The Lies of Locke Lamora", Author: "Scott Lynch", ISBN: "9780553804676", Description: "A band of con artists led by Locke Lamora pull heists in the city of Camorr.", Genre: "Fantasy", PublishedYear: 2006, TotalCopies: 5},
}

func main() {
	cfg := config.Load()
	ctx := context.Background()
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	br := bookrepo.New(db)

	inserted := 0
	for i := range seedBooks {
		b := seedBooks[i]
		_, err := br.GetByISBN(ctx, b.ISBN)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error("seed lookup failed", "isbn", b.ISBN, "err", err)
			os.Exit(1)
		}
		if err := br.Create(ctx, &b); err != nil {
			log.Error("seed insert failed", "isbn", b.ISBN, "err", err)
			os.Exit(1)
		}
		inserted++
	}

	log.Info("seed complete", "inserted", inserted, "skipped", len(seedBooks)-inserted)
}
