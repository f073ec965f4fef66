package main

import (
	"context"
	"log"

	"recruitkit/resume-matcher/internal/config"
	"recruitkit/resume-matcher/internal/repositories"
	"recruitkit/resume-matcher/internal/services"
)

// Rebuilds the Qdrant collection from the database. Useful after changing
// the collection config or losing the index; embeddings already stored on
// the records are reused, records without one are re-embedded.
func main() {
	log.Println("🚀 Starting vector reindex...")

	// Load configuration
	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	vectorService, err := services.NewVectorIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := vectorService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	enrichment := services.NewEnrichmentService(geminiService)
	resumeRepo := repositories.NewResumeRepository(db)
	jdRepo := repositories.NewJobDescriptionRepository(db)

	ctx := context.Background()

	successCount := 0
	failCount := 0

	resumes, err := resumeRepo.FindAll()
	if err != nil {
		log.Fatalf("❌ Failed to load resumes: %v", err)
	}

	for _, resume := range resumes {
		log.Printf("📄 Resume: %s (%s)", resume.CandidateName, resume.ID)

		embedding := resume.Embedding
		if len(embedding) == 0 {
			log.Printf("   📖 No stored embedding, generating...")
			embedding, err = enrichment.Embed(ctx, resume.Text)
			if err != nil {
				log.Printf("   ❌ Failed to embed: %v", err)
				failCount++
				continue
			}
		}

		if err := vectorService.UpsertDocument(ctx, resume.ID.String(), services.DocTypeResume, embedding); err != nil {
			log.Printf("   ❌ Failed to upsert: %v", err)
			failCount++
			continue
		}
		successCount++
	}

	jds, err := jdRepo.FindAll()
	if err != nil {
		log.Fatalf("❌ Failed to load job descriptions: %v", err)
	}

	for _, jd := range jds {
		log.Printf("📄 Job description: %s (%s)", jd.Title, jd.ID)

		embedding := jd.Embedding
		if len(embedding) == 0 {
			log.Printf("   📖 No stored embedding, generating...")
			embedding, err = enrichment.Embed(ctx, jd.Text)
			if err != nil {
				log.Printf("   ❌ Failed to embed: %v", err)
				failCount++
				continue
			}
		}

		if err := vectorService.UpsertDocument(ctx, jd.ID.String(), services.DocTypeJobDescription, embedding); err != nil {
			log.Printf("   ❌ Failed to upsert: %v", err)
			failCount++
			continue
		}
		successCount++
	}

	log.Printf("\n✅ Reindex complete: %d indexed, %d failed", successCount, failCount)
}
