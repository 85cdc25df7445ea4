package evolution

import "math/rand"

// TournamentSelection samples k individuals without replacement and
// returns the fittest. k is clamped to the population.
func TournamentSelection(pop *Population, k int, rng *rand.Rand) *Individual {
	if pop == nil || len(pop.Individuals) == 0 {
		return nil
	}
	if k > len(pop.Individuals) {
		k = len(pop.Individuals)
	}
	if k < 1 {
		k = 1
	}

	var best *Individual
	for _, idx := range rng.Perm(len(pop.Individuals))[:k] {
		if cand := pop.Individuals[idx]; best == nil || cand.Fitness > best.Fitness {
			best = cand
		}
	}
	return best
}

// SelectElite returns the top n individuals by fitness.
func SelectElite(pop *Population, n int) []*Individual {
	if pop == nil || n < 1 || len(pop.Individuals) == 0 {
		return nil
	}
	ranked := pop.Ranked()
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// SelectEliteByRate returns the top share of the population, at least
// one individual.
func SelectEliteByRate(pop *Population, rate float64) []*Individual {
	if pop == nil || len(pop.Individuals) == 0 {
		return nil
	}
	n := int(float64(len(pop.Individuals)) * rate)
	if n < 1 {
		n = 1
	}
	return SelectElite(pop, n)
}

// SelectDiverse picks n individuals by greedy max-min distance, seeded
// with the fittest. Used when reporting top genomes so the shortlist is
// not n clones of one ruleset.
func SelectDiverse(pop *Population, n int) []*Individual {
	if pop == nil || n < 1 || len(pop.Individuals) == 0 {
		return nil
	}
	if n >= len(pop.Individuals) {
		return pop.Individuals
	}

	ranked := pop.Ranked()
	selected := []*Individual{ranked[0]}
	remaining := ranked[1:]

	for len(selected) < n && len(remaining) > 0 {
		bestIdx := 0
		bestMinDist := -1.0
		for i, cand := range remaining {
			minDist := 1.0
			for _, sel := range selected {
				if d := GenomeDistance(cand.Genome, sel.Genome); d < minDist {
					minDist = d
				}
			}
			if minDist > bestMinDist {
				bestMinDist = minDist
				bestIdx = i
			}
		}
		selected = append(selected, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return selected
}
