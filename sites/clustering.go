// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package sites

import "slices"

// Cluster groups co-located sites: a site joins a cluster when it lies
// within distanceThreshold meters of any member, so clusters are chained.
// It returns indexes into sites; every index appears in exactly one
// cluster, and clusters are ordered by their first member.
func Cluster(sites []Site, distanceThreshold float64) [][]int {
	clusters := make([][]int, 0, len(sites))

	visited := make([]bool, len(sites))

	for i := range sites {
		if visited[i] {
			continue
		}

		cluster := []int{i}
		visited[i] = true

		// Members appended while scanning are scanned in turn, so a site
		// seen before a nearer member joined is not missed.
		for next := 0; next < len(cluster); next++ {
			member := cluster[next]

			for j := range sites {
				if visited[j] {
					continue
				}

				if sites[j].Point.HaversineDistance(&sites[member].Point) <= distanceThreshold {
					cluster = append(cluster, j)
					visited[j] = true
				}
			}
		}

		slices.Sort(cluster)
		clusters = append(clusters, cluster)
	}

	return clusters
}

// Siblings returns, for every site, the indexes of the other members of
// its cluster.
func Siblings(sites []Site, distanceThreshold float64) [][]int {
	ret := make([][]int, len(sites))

	for _, cluster := range Cluster(sites, distanceThreshold) {
		if len(cluster) < 2 {
			continue
		}

		for _, i := range cluster {
			for _, j := range cluster {
				if i != j {
					ret[i] = append(ret[i], j)
				}
			}
		}
	}

	return ret
}
